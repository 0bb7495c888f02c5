package dto

import "regexp"

var (
	digitsPattern = regexp.MustCompile(`^[0-9]*$`)
	monthPattern  = regexp.MustCompile(`^(0[1-9]|1[0-2])$`)
)
