package db

import (
	"fmt"

	gorm_logrus "github.com/onrik/gorm-logrus"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	dbmodels "timesheet-backend/models/db"
)

var DB *gorm.DB

func Connect(host string, port string, database string, user string, pass string, debugMode bool, migrate bool) (err error) {
	if DB == nil {
		dbConnString := fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=disable password=%s", host, port, user, database, pass)
		db, err := gorm.Open(postgres.Open(dbConnString), &gorm.Config{
			Logger: gorm_logrus.New(),
		})

		if debugMode {
			db.Logger = logger.Default.LogMode(logger.Info)
		}
		if err != nil {
			return errors.Wrap(err, "database connection error")
		}
		DB = db
		if migrate {
			err = Migrate()
			if err != nil {
				return errors.Wrap(err, "database migration error")
			}
		}
	}
	return nil
}

func Migrate() error {
	err := DB.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error
	if err != nil {
		return err
	}
	err = DB.AutoMigrate(
		&dbmodels.User{},
		&dbmodels.ValidationRequest{},
		&dbmodels.ValidationView{},
		&dbmodels.RegenerationJob{},
		&dbmodels.Notification{},
	)
	if err != nil {
		return err
	}
	log.Info("database migration completed")
	return nil
}
