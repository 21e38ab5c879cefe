package constants

/*
	Defines a set of base level
	constants and enums to be used
	throughout Gavin and it's
	associated services.
*/
type RunStatus string
type LineType string
