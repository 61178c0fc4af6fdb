package domain

type Extractor interface {
	Extract(src, dst string, format Format) error
}

type Prompter interface {
	Confirm(prompt string) bool
}

type State interface {
	Record(app *InstalledApp) error
	List() ([]*InstalledApp, error)
	Close() error
}
