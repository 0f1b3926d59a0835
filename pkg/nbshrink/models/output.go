package models

// Output types defined by nbformat v4.
const (
	OutputDisplayData   = "display_data"
	OutputExecuteResult = "execute_result"
	OutputStream        = "stream"
	OutputError         = "error"
)

// Output is a single code cell output. Its JSON object is kept as decoded so
// that untouched outputs are written back unchanged.
type Output map[string]any

// OutputType returns the output_type field.
func (o Output) OutputType() string {
	t, _ := o["output_type"].(string)
	return t
}

// Data returns the MIME bundle of a display_data or execute_result output.
func (o Output) Data() map[string]any {
	d, _ := o["data"].(map[string]any)
	return d
}

// FirstMIME returns the first MIME type from preference that is present in
// the output's data bundle.
func (o Output) FirstMIME(preference ...string) (string, bool) {
	data := o.Data()
	if data == nil {
		return "", false
	}
	for _, mime := range preference {
		if _, ok := data[mime]; ok {
			return mime, true
		}
	}
	return "", false
}

// Payload returns the data bundle entry for mime as a single string.
func (o Output) Payload(mime string) (string, error) {
	s, err := ParseMultilineString(o.Data()[mime])
	return string(s), err
}
