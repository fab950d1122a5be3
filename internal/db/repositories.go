package db

import "gorm.io/gorm"

type Repositories struct {
	Users   *UserRepository
	Needs   *NeedRepository
	Letters *LetterRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:   NewUserRepository(database),
		Needs:   NewNeedRepository(database),
		Letters: NewLetterRepository(database),
	}
}
