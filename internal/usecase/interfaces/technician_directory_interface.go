package interfaces

import "context"

//go:generate mockgen -source=technician_directory_interface.go -destination=mocks/mock_technician_directory.go -package=mock_interfaces

// ITechnicianDirectory answers whether a technician can be assigned to a job.
type ITechnicianDirectory interface {
	Exists(ctx context.Context, technicianID string) (bool, error)
}
