package media

// Buffer carries one uploaded media payload through verification. The bytes
// are owned by the request handler and never mutated by the pipeline.
type Buffer struct {
	Data           []byte
	Filename       string
	DeclaredFormat string
}

// ValidationResult captures the outcome of payload validation.
type ValidationResult struct {
	IsValid      bool
	Format       string
	Width        int
	Height       int
	FileSize     int64
	Error        error
	SecurityRisk string
}
