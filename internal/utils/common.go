package utils

import (
	"crypto/md5"
	"encoding/hex"
)

// Md5Hex returns the lowercase hex MD5 digest of data.
func Md5Hex(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}
