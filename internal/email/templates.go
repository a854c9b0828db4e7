package email

import "fmt"

// Minimal inline templates. The frontend handles all other messaging.

func WelcomeBody(email string) (subject, body string) {
	subject = "Willkommen bei Dienstmarkt"
	body = fmt.Sprintf(
		"<p>Hallo %s,</p><p>dein Konto wurde erstellt. Du kannst jetzt ein Anbieterprofil anlegen oder Auftr&auml;ge ausschreiben.</p>",
		email,
	)
	return subject, body
}

func SuspensionBody(reason string) (subject, body string) {
	subject = "Dein Konto wurde gesperrt"
	if reason == "" {
		reason = "Verletzung der Nutzungsbedingungen"
	}
	body = fmt.Sprintf(
		"<p>Dein Konto wurde von einem Administrator gesperrt.</p><p>Grund: %s</p>",
		reason,
	)
	return subject, body
}

func DeletionBody() (subject, body string) {
	subject = "Dein Konto wurde entfernt"
	body = "<p>Dein Konto und die zugeh&ouml;rigen Inhalte wurden von einem Administrator entfernt.</p>"
	return subject, body
}
