// Package lib provide convinience functions for other packages in
// goarena. Package shall not import packages other than golang's
// standard packages.
package lib
