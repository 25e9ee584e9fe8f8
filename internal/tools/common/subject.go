package common

// SubjectFromArgs extracts the audit subject from request arguments.
// Participant tools carry an "email" argument; that email identifies
// who the operation acted on. Returns "" when no subject applies, and
// the audit logger then omits the field.
func SubjectFromArgs(args map[string]interface{}) string {
	if email, ok := args["email"].(string); ok && email != "" {
		return email
	}
	return ""
}
