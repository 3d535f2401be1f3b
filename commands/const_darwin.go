package commands

const (
	_etc = "/usr/local/etc/com.github.datagrove"

	DEFAULT_CONFIG      = _etc + "/csv2sheets.yaml"
	DEFAULT_CREDENTIALS = _etc + "/.google/credentials.json"
)
