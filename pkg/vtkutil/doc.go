// Package vtkutil provides shared formatting utilities for writing VTK XML
// files in ASCII encoding.
package vtkutil
