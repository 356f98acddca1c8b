package core

func Version() string {
	return "0.4.0"
}
