package service

// FieldCipher reversibly encrypts a single sensitive string field (the stored
// user email). Decryption failures are deliberately non-fatal: corrupt legacy
// data should degrade one record, never abort a bulk listing.
type FieldCipher interface {
	// Encrypt turns plaintext into an opaque token suitable for storage.
	Encrypt(plaintext string) (string, error)

	// Decrypt reverses Encrypt. The boolean is false when the token cannot be
	// decrypted; callers treat that as "no usable value".
	Decrypt(token string) (string, bool)
}
