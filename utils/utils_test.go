package utils

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTPRange(t *testing.T) {
	for i := 0; i < 200; i++ {
		otp := GenerateOTP()
		require.Len(t, otp, 6)

		n, err := strconv.Atoi(otp)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}
