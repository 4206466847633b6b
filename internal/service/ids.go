package service

import "strconv"

// IDGenerator defines ID generation capability.
type IDGenerator interface {
	Next() (int64, error)
}

// buildFileID formats a snowflake ID as an opaque file record id.
func buildFileID(n int64) string {
	return "f" + strconv.FormatInt(n, 36)
}

// buildChartID formats a snowflake ID as an opaque chart record id.
func buildChartID(n int64) string {
	return "c" + strconv.FormatInt(n, 36)
}
