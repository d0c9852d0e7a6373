package tea

// Logger receives diagnostic traces. Its signature matches printf-style
// loggers such as log.Printf.
type Logger func(format string, args ...interface{})

func nopLogger(string, ...interface{}) {}

// Option configures a Cipher.
type Option func(*Cipher)

// WithLogger traces Set, Encode and Decode through log.
// A nil log disables tracing.
func WithLogger(log Logger) Option {
	return func(c *Cipher) {
		if log == nil {
			log = nopLogger
		}
		c.log = log
	}
}
