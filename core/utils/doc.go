// Package utils provides common utility functions for the hr-eval application.
// It includes pointer helpers used where optional values must distinguish
// "absent" from a genuine zero value.
package utils
