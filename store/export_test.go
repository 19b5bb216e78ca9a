package store

var ErrAlreadyRunning = errAlreadyRunning
