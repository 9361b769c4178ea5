package training

import "errors"

var (
	// ErrEmptyDataset is returned when there is nothing to train on.
	ErrEmptyDataset = errors.New("training: empty dataset")
	// ErrSingleClass is returned when the win labels are all identical.
	ErrSingleClass = errors.New("training: win labels contain a single class")
)
