package packaging

// SetGOOS overrides the host operating system used for validation.
func (b *Backend) SetGOOS(goos string) {
	b.goos = goos
}
