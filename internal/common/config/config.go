package config

import (
	"os"
	"strconv"
)

// ============================================================
// Configuration
// ============================================================

type Config struct {
	Port         string
	Environment  string
	ReadTimeout  int
	WriteTimeout int

	// Builder
	ProjectName string
	OutputDir   string
	WallWidth   float64 // ширина стены по умолчанию
	WallHeight  float64 // высота стены по умолчанию

	// Учетные данные приложения для owner history / заголовка STEP
	DevelopersName          string
	ApplicationName         string
	ApplicationID           string
	ApplicationVersion      string
	EditorsFamilyName       string
	EditorsGivenName        string
	EditorsOrganisationName string
}

// Load загружает конфигурацию из переменных окружения
func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "3000"),
		Environment:  getEnv("ENV", "development"),
		ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 10),
		WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 10),

		ProjectName: getEnv("PROJECT_NAME", "Building Project"),
		OutputDir:   getEnv("OUTPUT_DIR", "data/out"),
		WallWidth:   getEnvAsFloat("WALL_WIDTH", 0.5),
		WallHeight:  getEnvAsFloat("WALL_HEIGHT", 2.0),

		DevelopersName:          getEnv("APP_DEVELOPER", "ifc-builder"),
		ApplicationName:         getEnv("APP_NAME", "ifc-builder"),
		ApplicationID:           getEnv("APP_ID", "ifc-builder"),
		ApplicationVersion:      getEnv("APP_VERSION", "1.0"),
		EditorsFamilyName:       getEnv("EDITOR_FAMILY_NAME", ""),
		EditorsGivenName:        getEnv("EDITOR_GIVEN_NAME", ""),
		EditorsOrganisationName: getEnv("EDITOR_ORGANISATION", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsFloat(key string, defaultVal float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultVal
}
