package config

import (
	"context"
	"database/sql"
	"fmt"
	"net"

	_ "github.com/glebarez/go-sqlite"
	"github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"

	"go-agrilab/logger"
	"go-agrilab/models"
	"go-agrilab/store"
)

// DSN 根据配置生成连接字符串，DB_DSN 优先
func (c *Config) DSN(dialect store.Dialect) string {
	if c.DBDSN != "" {
		return c.DBDSN
	}
	switch dialect {
	case store.Postgres:
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
	case store.SQLite:
		return c.DBName + ".db"
	default:
		mc := mysql.NewConfig()
		mc.User = c.DBUser
		mc.Passwd = c.DBPassword
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(c.DBHost, c.DBPort)
		mc.DBName = c.DBName
		mc.ParseTime = true
		// 更新语句按匹配行数返回 affectedRows，重复提交相同数据也返回 1
		mc.ClientFoundRows = true
		mc.Params = map[string]string{"charset": "utf8mb4"}
		return mc.FormatDSN()
	}
}

// ConnectDB 连接数据库
func ConnectDB(ctx context.Context, cfg *Config) (*store.Store, error) {
	dialect, err := store.ParseDialect(cfg.DBDriver)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(dialect.DriverName(), cfg.DSN(dialect))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	if dialect == store.SQLite {
		// sqlite 只允许一个写连接
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	logger.Default().Infof("connected to %s database", dialect)
	return store.New(db, dialect), nil
}

// Migration 迁移结构
type Migration struct {
	Name string
	SQL  string
}

// AutoMigrate 创建缺失的数据表。只执行 CREATE TABLE IF NOT EXISTS，不修改已有表结构
func AutoMigrate(ctx context.Context, s *store.Store) error {
	if err := createMigrationsTable(ctx, s); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	for _, migration := range getMigrations(s.Dialect()) {
		if err := runMigrationIfNotExists(ctx, s, migration); err != nil {
			return fmt.Errorf("failed to run migration %s: %w", migration.Name, err)
		}
	}
	return nil
}

// createMigrationsTable 创建迁移表
func createMigrationsTable(ctx context.Context, s *store.Store) error {
	d := s.Dialect()
	createSQL := "CREATE TABLE IF NOT EXISTS migrations (" +
		d.AutoIncrementColumn("id") + ", " +
		"name VARCHAR(255) NOT NULL UNIQUE, " +
		"executed_at " + d.TimestampType() + " DEFAULT CURRENT_TIMESTAMP" +
		")"
	_, err := s.Exec(ctx, createSQL)
	return err
}

// getMigrations 获取所有迁移，建表语句由资源字段定义生成
func getMigrations(d store.Dialect) []Migration {
	migrations := []Migration{
		{Name: "001_create_users_table", SQL: models.CreateUsersTable(d)},
	}
	for i, r := range models.Resources() {
		migrations = append(migrations, Migration{
			Name: fmt.Sprintf("%03d_create_%s_table", i+2, r.Name),
			SQL:  r.CreateTable(d),
		})
	}
	return migrations
}

// runMigrationIfNotExists 如果迁移不存在则运行
func runMigrationIfNotExists(ctx context.Context, s *store.Store, migration Migration) error {
	log := logger.FromContext(ctx)

	_, rows, err := s.Select(ctx, "SELECT name FROM migrations WHERE name = ?", migration.Name)
	if err != nil {
		return err
	}
	if len(rows) > 0 {
		log.Debugf("Migration %s already executed, skipping", migration.Name)
		return nil
	}

	log.Infof("Running migration: %s", migration.Name)
	if _, err := s.Exec(ctx, migration.SQL); err != nil {
		return err
	}

	_, err = s.Exec(ctx, "INSERT INTO migrations (name) VALUES (?)", migration.Name)
	return err
}
