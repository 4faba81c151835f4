package compiler

// ParsingError signals that compilation stopped at a parse error. The
// precise message has already been reported to stderr by the time this is
// returned; callers only need the fact that the chunk is unusable.
type ParsingError struct{}

func (e ParsingError) Error() string {
	return "Error while parsing"
}
