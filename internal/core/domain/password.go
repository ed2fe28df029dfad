package domain

import "math/rand/v2"

const (
	lowercase = "abcdefghijklmnopqrstuvwxyz"
	uppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits    = "0123456789"

	// PasswordBlockLength is the number of characters drawn from each class.
	PasswordBlockLength = 4
	PasswordLength      = 3 * PasswordBlockLength
)

// GeneratePassword returns a root password with a block of lowercase letters, one of uppercase
// letters and one of digits, shuffled so the classes do not appear in a fixed order.
func GeneratePassword() string {
	password := make([]byte, 0, PasswordLength)
	for _, class := range []string{lowercase, uppercase, digits} {
		for range PasswordBlockLength {
			password = append(password, class[rand.IntN(len(class))])
		}
	}

	rand.Shuffle(len(password), func(i, j int) {
		password[i], password[j] = password[j], password[i]
	})

	return string(password)
}
