// Package clipboard provides access to the system clipboard.
package clipboard

import (
	"github.com/atotto/clipboard"
)

// Copier copies a rendered document to the system clipboard.
type Copier interface {
	Copy(document string) error
}

// Service implements Copier using github.com/atotto/clipboard.
type Service struct{}

// NewService constructs a clipboard service implementation.
func NewService() *Service {
	return &Service{}
}

// Copy writes the document to the system clipboard.
func (service *Service) Copy(document string) error {
	return clipboard.WriteAll(document)
}

var _ Copier = (*Service)(nil)
