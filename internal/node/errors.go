package node

import "github.com/senutpal/paxossim/internal/kerror"

func withNodeID(err error, id int) error {
	if ke, ok := err.(*kerror.Kerror); ok {
		return ke.With("nodeId", id)
	}
	return err
}
