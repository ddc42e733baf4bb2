package controllers

import (
	"errors"
	"strings"

	"github.com/donlinch/archdon-sub001/app/models"
	jwt "github.com/form3tech-oss/jwt-go"
	"github.com/go-pg/pg/v10"
	"github.com/gofiber/fiber/v2"
	uuid "github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type AuthController struct {
	DB     *pg.DB
	Secret string
}

func encrypt(pass string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	return string(hash), err
}

func parseCredentials(c *fiber.Ctx) (*models.UserDto, error) {
	userDto := new(models.UserDto)
	if err := c.BodyParser(userDto); err != nil {
		return nil, err
	}
	userDto.Email = strings.TrimSpace(userDto.Email)
	if userDto.Email == "" || userDto.Pass == "" {
		return nil, errors.New("email and password are required")
	}
	return userDto, nil
}

func (a *AuthController) CreateUser(c *fiber.Ctx) error {
	userDto, err := parseCredentials(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	hash, err := encrypt(userDto.Pass)
	if err != nil {
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	id := uuid.NewV4()
	_, err = a.DB.Model(&models.User{
		Id:       id.String(),
		Email:    userDto.Email,
		Password: hash}).Insert()
	if err != nil {
		logrus.WithError(err).WithField("email", userDto.Email).Warn("register failed")
		return c.SendStatus(fiber.StatusConflict)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id.String()})
}

func (a *AuthController) Login(c *fiber.Ctx) error {
	userDto, err := parseCredentials(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	user := new(models.User)
	if err := a.DB.Model(user).Where("email = ?", userDto.Email).Select(); err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(userDto.Pass)) != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	t, err := a.sign(user.Id)
	if err != nil {
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return c.JSON(fiber.Map{"access_token": t})
}

func (a *AuthController) sign(userID string) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["user_id"] = userID
	return token.SignedString([]byte(a.Secret))
}

// Cur answers with the user id carried by the verified token.
func Cur(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	claims := user.Claims.(jwt.MapClaims)
	user_id, ok := claims["user_id"].(string)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	return c.SendString(user_id)
}
