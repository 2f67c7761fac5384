package dom

// Recorder is a Port that keeps the last markup written to each container.
type Recorder map[string]string

func (r Recorder) SetContainerContent(container, markup string) error {
	r[container] = markup
	return nil
}
