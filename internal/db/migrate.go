package db

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunMigrations применяет миграции из migrationsPath (таблица extension_storage).
func RunMigrations(dsn string, migrationsPath string) error {
	const op = "db.RunMigrations"

	if dsn == "" {
		return fmt.Errorf("%s: DSN для миграций не может быть пустым", op)
	}
	if migrationsPath == "" {
		return fmt.Errorf("%s: путь к файлам миграций не может быть пустым", op)
	}

	m, err := migrate.New("file://"+migrationsPath, dsn)
	if err != nil {
		return fmt.Errorf("%s: не удалось создать экземпляр мигратора: %w", op, err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%s: ошибка при выполнении миграций: %w", op, err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return fmt.Errorf("%s: ошибка при проверке версии миграций: %w", op, err)
	}
	if dirty {
		return fmt.Errorf("%s: обнаружена 'грязная' миграция версии %d, исправьте вручную", op, version)
	}

	return nil
}
