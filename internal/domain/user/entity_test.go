package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResetTokenPair(t *testing.T) {
	u := &User{}
	now := time.Now()

	assert.False(t, u.HasValidResetToken("abc", now))

	u.SetResetToken("abc", now.Add(15*time.Minute))
	assert.NotNil(t, u.ResetPasswordToken)
	assert.NotNil(t, u.ResetPasswordExpire)
	assert.True(t, u.HasValidResetToken("abc", now))
	assert.False(t, u.HasValidResetToken("other", now))
	assert.False(t, u.HasValidResetToken("abc", now.Add(15*time.Minute)))

	u.ClearResetToken()
	assert.Nil(t, u.ResetPasswordToken)
	assert.Nil(t, u.ResetPasswordExpire)
}
