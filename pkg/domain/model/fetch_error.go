package model

import "fmt"

// FetchError is returned when a well-known endpoint answers with a status other than 200
type FetchError struct {
	URL        string
	StatusCode int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("URL '%s' returned status code %d. Domain might not be correct.", e.URL, e.StatusCode)
}
