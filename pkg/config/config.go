package config

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config carries every tunable the application needs. A single value is
// loaded at startup and passed explicitly to the components that need it.
type Config struct {
	Env       string
	Port      int
	APIPrefix string

	CORS      CORSConfig
	Log       LogConfig
	Registrar RegistrarConfig
	Dirs      DirsConfig
	Backup    BackupConfig
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// RegistrarConfig holds enrollment and grading limits.
type RegistrarConfig struct {
	MaxStudentsPerCourse int
	MaxCoursesPerStudent int
	MinimumGPA           float64
	DefaultSemester      string
}

// DirsConfig names the on-disk layout for imports, exports and backups.
type DirsConfig struct {
	Data    string
	Backups string
	Exports string
	Imports string
}

// BackupConfig controls ZIP backup retention.
type BackupConfig struct {
	RetentionDays int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Registrar = RegistrarConfig{
		MaxStudentsPerCourse: v.GetInt("MAX_STUDENTS_PER_COURSE"),
		MaxCoursesPerStudent: v.GetInt("MAX_COURSES_PER_STUDENT"),
		MinimumGPA:           v.GetFloat64("MINIMUM_GPA"),
		DefaultSemester:      v.GetString("DEFAULT_SEMESTER"),
	}

	dataDir := v.GetString("DATA_DIR")
	cfg.Dirs = DirsConfig{
		Data:    dataDir,
		Backups: filepath.Join(dataDir, "backups"),
		Exports: filepath.Join(dataDir, "exports"),
		Imports: filepath.Join(dataDir, "imports"),
	}

	cfg.Backup = BackupConfig{
		RetentionDays: v.GetInt("BACKUP_RETENTION_DAYS"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("MAX_STUDENTS_PER_COURSE", 30)
	v.SetDefault("MAX_COURSES_PER_STUDENT", 6)
	v.SetDefault("MINIMUM_GPA", 2.0)
	v.SetDefault("DEFAULT_SEMESTER", "FALL")

	v.SetDefault("DATA_DIR", "./data")
	v.SetDefault("BACKUP_RETENTION_DAYS", 30)
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
