package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

var (
	config     *Config
	configOnce sync.Once
)

// Config stores all configuration of the application
type Config struct {
	// Environment type
	EnvType string

	// Database
	DBDriver        string // 数据库驱动: "mysql" 或 "postgres"
	DBHost          string
	DBUser          string
	DBPassword      string
	DBName          string
	DBPort          string
	DBMigrationMode string // 数据库迁移模式: "auto"(默认), "drop"(删除重建)

	// Server
	ServerPort string
	CORSOrigin string
	TimeZone   string // 计算"今日"订单使用的时区

	// Redis，用于多实例之间的实时事件分发
	RedisEnabled bool
	RedisHost    string
	RedisPort    string
	RedisDB      int

	// MQTT配置，订单状态事件桥接
	MQTTEnabled   bool
	MQTTBrokerURL string // MQTT服务器地址，如 tcp://broker.example.com:1883
	MQTTClientID  string
	MQTTUsername  string
	MQTTPassword  string
	MQTTQoS       int // 服务质量 (0, 1, 2)

	// JWT Authentication
	JWTSecretKey  string
	TokenTTLHours int

	// 演示模式下对所有账户都接受的统一密码，为空表示关闭
	DemoUniversalPassword string

	// 为true时只允许请求与自身角色一致的看板
	DashboardStrictRole bool

	// Admin
	DefaultAdminPassword string
}

// LoadConfig loads config from environment variables based on ENV_TYPE
func LoadConfig() *Config {
	envType := getEnv("ENV_TYPE", "LOCAL")
	prefix := ""

	if strings.ToUpper(envType) == "LOCAL" {
		prefix = "LOCAL_"
	} else if strings.ToUpper(envType) == "SERVER" {
		prefix = "SERVER_"
	} else {
		fmt.Printf("Warning: Unknown ENV_TYPE '%s', defaulting to LOCAL environment\n", envType)
		prefix = "LOCAL_"
		envType = "LOCAL"
	}
	envType = strings.ToUpper(envType)

	fmt.Printf("Loading configuration for environment: %s\n", envType)

	jwtSecret := getEnv("JWT_SECRET_KEY", "lunchbox-secret-key-change-in-production")
	if envType == "SERVER" {
		jwtSecret = getEnvRequired("JWT_SECRET_KEY")
	}

	return &Config{
		EnvType: envType,

		DBDriver:        strings.ToLower(getEnv(prefix+"DB_DRIVER", "postgres")),
		DBHost:          getEnv(prefix+"DB_HOST", "localhost"),
		DBUser:          getEnv(prefix+"DB_USER", "postgres"),
		DBPassword:      getEnv(prefix+"DB_PASSWORD", "password"),
		DBName:          getEnv(prefix+"DB_NAME", "lunchbox_express"),
		DBPort:          getEnv(prefix+"DB_PORT", "5432"),
		DBMigrationMode: getEnv(prefix+"DB_MIGRATION_MODE", "auto"),

		ServerPort: getEnv(prefix+"SERVER_PORT", getEnv("SERVER_PORT", "3001")),
		CORSOrigin: getEnv("CORS_ORIGIN", "http://localhost:5173"),
		TimeZone:   getEnv("TIME_ZONE", "Local"),

		RedisEnabled: getEnvAsBool("REDIS_ENABLED", false),
		RedisHost:    getEnv(prefix+"REDIS_HOST", getEnv("REDIS_HOST", "localhost")),
		RedisPort:    getEnv(prefix+"REDIS_PORT", getEnv("REDIS_PORT", "6379")),
		RedisDB:      getEnvAsInt("REDIS_DB", 0),

		MQTTEnabled:   getEnvAsBool("MQTT_ENABLED", false),
		MQTTBrokerURL: getEnv("MQTT_BROKER_URL", "tcp://localhost:1883"),
		MQTTClientID:  getEnv("MQTT_CLIENT_ID", "lunchbox_server"),
		MQTTUsername:  getEnv("MQTT_USERNAME", ""),
		MQTTPassword:  getEnv("MQTT_PASSWORD", ""),
		MQTTQoS:       getEnvAsInt("MQTT_QOS", 1),

		JWTSecretKey:  jwtSecret,
		TokenTTLHours: getEnvAsInt("TOKEN_TTL_HOURS", 24),

		DemoUniversalPassword: getEnv("DEMO_UNIVERSAL_PASSWORD", ""),
		DashboardStrictRole:   getEnvAsBool("DASHBOARD_STRICT_ROLE", false),

		DefaultAdminPassword: getEnv("DEFAULT_ADMIN_PASSWORD", "admin123"),
	}
}

// GetConfig returns the application configuration as a singleton
func GetConfig() *Config {
	configOnce.Do(func() {
		config = LoadConfig()
	})
	return config
}

// GetDSN returns the database connection string for the configured driver
func (c *Config) GetDSN() string {
	if c.DBDriver == "mysql" {
		return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?charset=utf8mb4&parseTime=True&loc=Local"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.postgresTimeZone())
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

// TokenTTL 令牌有效期
func (c *Config) TokenTTL() time.Duration {
	if c.TokenTTLHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.TokenTTLHours) * time.Hour
}

// Location 返回计算"今日"使用的时区，无法解析时回退到本地时区
func (c *Config) Location() *time.Location {
	if c.TimeZone == "" || c.TimeZone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.Local
	}
	return loc
}

func (c *Config) postgresTimeZone() string {
	if c.TimeZone == "" || c.TimeZone == "Local" {
		return "UTC"
	}
	return c.TimeZone
}

// Helper function to get environment variable with default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// Helper function to get environment variable as integer with default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variable as boolean with default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// 要求必须提供环境变量的辅助函数
func getEnvRequired(key string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	panic(fmt.Sprintf("Required environment variable %s is not set", key))
}
