// Package configs manages closet's configuration and file locations.
//
// Configuration is a single TOML file, by default at
// <UserConfigDir>/closet/config.toml:
//
//	[storage]
//	data_dir = "/home/alice/.local/share/closet/data"
//
//	[user]
//	default_username = "alice"
//
//	[kdf]
//	time = 1
//	memory_kib = 65536
//	threads = 4
//
// Every key is optional. A missing file means all defaults.
//
// # Settings
//
// ResolveSettings works out where the config file and the data directory
// live. The CLOSET_CONFIG_DIR and CLOSET_DATA_DIR environment variables
// override the platform defaults, and XDG_DATA_HOME is honoured for data.
// A data_dir in the config file wins over the default but not over
// CLOSET_DATA_DIR or the --data-dir flag.
package configs
