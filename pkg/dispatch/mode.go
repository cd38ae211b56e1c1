package dispatch

// Mode selects how the formatter is invoked.
type Mode int

const (
	// Stdio formats text piped on standard input.
	Stdio Mode = iota
	// Files formats explicit files in place.
	Files
	// Project delegates to cargo fmt for the whole project.
	Project
)

func (m Mode) String() string {
	switch m {
	case Stdio:
		return "stdio"
	case Files:
		return "files"
	case Project:
		return "project"
	default:
		return "unknown"
	}
}

// SelectMode picks exactly one mode per run. Piped input wins over file
// arguments, which win over the project default.
func SelectMode(stdinIsTerminal bool, files []string) Mode {
	if !stdinIsTerminal {
		return Stdio
	}
	if len(files) > 0 {
		return Files
	}
	return Project
}
