package constraint

// Components exposes the strongly connected components for tests.
var Components = components
