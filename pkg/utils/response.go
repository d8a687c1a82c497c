package utils

// PanicIfNeeded panics when err is non-nil so the REST recovery middleware
// can translate it into an HTTP response. Keeps handler bodies linear.
func PanicIfNeeded(err any, message ...string) {
	if err != nil {
		if len(message) > 0 {
			panic(message[0])
		}
		panic(err)
	}
}
