package config

type MongoDBConfig struct {
	URI      string
	Database string
}

type JWTConfig struct {
	JWTSecret   string
	ExpiryHours int
}

type PayPalConfig struct {
	ClientID     string
	ClientSecret string
	// sandbox or live
	Environment string
	// Overrides the environment's API host when set.
	APIBase string
}

type MidtransConfig struct {
	ServerKey   string
	Environment string
	// Orders paid through Midtrans are priced in this currency.
	Currency string
}

type SeedConfig struct {
	Secret        string
	AdminPassword string
	// Set when neither ADMIN_PASSWORD nor SEED_ADMIN_PASSWORD was provided.
	AdminPasswordDefaulted bool
}

type InventoryConfig struct {
	APIURL   string
	SyncCron string
}

type KafkaConfig struct {
	BrokerAddress string
	BrokerTopic   string
}

type TracingConfig struct {
	CollectorHost string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Sender   string
	Password string
}
