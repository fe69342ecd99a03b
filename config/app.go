package config

type App struct {
	Port        string `env:"APP_PORT" default:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`
	Env         string `env:"APP_ENV" default:"dev"`
	DBMaxConns  int32  `env:"DB_MAX_CONNS" default:"10"`

	// BookingOwnerEmptyIsError fails owner booking listings that match nothing.
	BookingOwnerEmptyIsError bool `env:"BOOKING_OWNER_EMPTY_IS_ERROR" default:"false"`
}
