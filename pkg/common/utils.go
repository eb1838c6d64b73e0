package common

import (
	"math/rand"
	"strconv"
)

// RandomReference draws a uniform random 9-digit number in
// [100000000, 999999999] and returns it as a string.
func RandomReference() string {
	return strconv.Itoa(100000000 + rand.Intn(900000000))
}
