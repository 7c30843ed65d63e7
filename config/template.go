package config

// Template is the documented default config written by `govlock config init`.
const Template = `# govlock node configuration.
# Every key can be overridden from the environment, e.g. GOVLOCK_LOG_LEVEL=debug.

[store]
# memory | badger
backend = "badger"
# relative paths resolve against --home
path = "data"
in_memory = false

[log]
level = "info"
# empty disables the rotating json file
file = ""
max_size_mb = 100
max_backups = 3
max_age_days = 28
compress = true

[chain]
chain_id = "govlock-local"
start_height = 1
start_time = 1700000000
# seconds the clock moves per block
block_seconds = 5

[locker]
address = "contract:locker"
unlock_period = 604800

[locker.t1]
period = 604800
weight = "0.25"

[locker.t2]
period = 1209600
weight = "0.5"

[locker.t3]
period = 1814400
weight = "0.75"

[locker.t4]
period = 2419200
weight = "1"

[governance]
address = "contract:gov"
threshold = "0.5"
quorum = "0.33"
# the only caller allowed to run sudo
admin = "admin"

[[platform.assets]]
id = 1
denom = "ucmdx"

[[platform.assets]]
id = 2
denom = "uatom"

[[platform.apps]]
id = 1
name = "harbor"
min_gov_deposit = "10"
gov_time_in_seconds = 3600
gov_token_id = 1
`
