package database

import (
	"chat-service/model"

	"github.com/upper/db/v4"
	"github.com/upper/db/v4/adapter/postgresql"
)

type Database struct {
	conn   db.Session
	config db.ConnectionURL
}

type DatabaseInterface interface {
	CreateUser(user *model.User) error
	GetUserByID(id string) (model.User, error)
	CreateMessage(message *model.Message) error
	ListMessagesFor(userId string, limit int) ([]model.Message, error)
}

func GetNewDatabaseConnection(connUrl db.ConnectionURL) *Database {
	session, err := postgresql.Open(connUrl)
	if err != nil {
		panic(err)
	}
	return &Database{conn: session, config: connUrl}
}

func (d Database) CreateUser(user *model.User) error {
	_, err := d.conn.Collection("users").Insert(user)
	if err != nil {
		return translateError("insert user", err)
	}
	return nil
}

func (d Database) GetUserByID(id string) (model.User, error) {
	var user model.User
	err := d.conn.Collection("users").Find(db.Cond{"id": id}).One(&user)
	if err != nil {
		return model.User{}, translateError("get user", err)
	}
	return user, nil
}

func (d Database) CreateMessage(message *model.Message) error {
	_, err := d.conn.Collection("messages").Insert(message)
	if err != nil {
		return translateError("insert message", err)
	}
	return nil
}

func (d Database) ListMessagesFor(userId string, limit int) ([]model.Message, error) {
	var messages []model.Message
	err := d.conn.SQL().SelectFrom("messages").
		Where("sender_id = ? OR recipient_id = ?", userId, userId).
		OrderBy("created_at DESC").
		Limit(limit).
		All(&messages)
	if err != nil {
		return nil, translateError("list messages", err)
	}
	return messages, nil
}
