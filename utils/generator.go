package utils

import (
	"math/rand"
	"time"

	"github.com/mwangik4/heartlink/models"
	"gorm.io/gorm"
)

const inviteCodeLength = 8
const letterBytes = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateUniqueInviteCode returns an invite code no existing user holds.
func GenerateUniqueInviteCode(tx *gorm.DB) (string, error) {
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))

	for {
		b := make([]byte, inviteCodeLength)
		for i := range b {
			b[i] = letterBytes[seededRand.Intn(len(letterBytes))]
		}
		code := string(b)

		var user models.User
		err := tx.Where("invite_code = ?", code).First(&user).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return code, nil
			}
			return "", err
		}
	}
}

// GenerateVerifyCode returns a 6-digit numeric code for email verification.
func GenerateVerifyCode() string {
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))
	digits := "0123456789"
	b := make([]byte, 6)
	for i := range b {
		b[i] = digits[seededRand.Intn(len(digits))]
	}
	return string(b)
}
