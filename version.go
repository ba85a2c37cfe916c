package nodectl

// Version is the current version of the go-nodectl library
const Version = "1.0.0"
