package analysis

import "strings"

// Unknown is the detector's answer for unrecognized names.
const Unknown = "unknown"

// NameDetector is the fallback GenderDetector: a fixed first-name table.
// Deployments with a real inference service inject their own implementation.
type NameDetector struct{}

// NewNameDetector creates the fallback detector.
func NewNameDetector() *NameDetector {
	return &NameDetector{}
}

// Detect implements GenderDetector.
func (d *NameDetector) Detect(firstName string) string {
	if g, ok := nameGenders[strings.ToLower(firstName)]; ok {
		return g
	}
	return Unknown
}

var nameGenders = map[string]string{
	"alice": "female", "carol": "female", "emma": "female", "grace": "female",
	"isabel": "female", "karen": "female", "mary": "female", "olivia": "female",
	"rachel": "female", "sarah": "female", "anna": "female", "laura": "female",
	"lucy": "female", "sophie": "female",
	"bob": "male", "david": "male", "frank": "male", "henry": "male",
	"jack": "male", "liam": "male", "noah": "male", "peter": "male",
	"tom": "male", "john": "male", "james": "male", "michael": "male",
	"mark": "male", "paul": "male",
}
