package email

// Provider sends transactional mail (welcome, moderation notices).
type Provider interface {
	Send(to, subject, body string) error
}

// NoopProvider discards all mail. Used in tests and when email is
// disabled in config.
type NoopProvider struct{}

func (p *NoopProvider) Send(to, subject, body string) error {
	return nil
}
