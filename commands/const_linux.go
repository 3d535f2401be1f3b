package commands

const (
	_etc = "/usr/local/etc/csv2sheets"

	DEFAULT_CONFIG      = _etc + "/csv2sheets.yaml"
	DEFAULT_CREDENTIALS = _etc + "/.google/credentials.json"
)
