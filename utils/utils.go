package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateOTP generates a 6-digit OTP, uniformly drawn from [100000, 999999].
func GenerateOTP() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// crypto/rand only fails when the OS entropy source is broken
		panic(fmt.Sprintf("otp generation failed: %v", err))
	}
	return fmt.Sprintf("%d", n.Int64()+100000)
}
