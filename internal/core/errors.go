package core

import "errors"

var (
	ErrPositionOutOfRange = errors.New("position outside of the document")
	ErrNodeNotInTree      = errors.New("node is not part of the position tree")
	ErrUnsupportedNode    = errors.New("unsupported node type")
	ErrInvalidOffset      = errors.New("offset exceeds the node's children")
	ErrInvalidRegion      = errors.New("region start is after its end")
	ErrInvalidScope       = errors.New("unknown context scope")
	ErrComponentNotFound  = errors.New("component not found")
)
