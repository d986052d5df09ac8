package controllers

import (
	"net/http"
	"time"

	"github.com/emidigital/emi-crm/models"
	"github.com/emidigital/emi-crm/repository"
	"github.com/emidigital/emi-crm/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Login authenticates a marketer and issues a JWT.
func Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "Permintaan tidak valid: "+err.Error(), http.StatusBadRequest)
		return
	}

	utils.Logger.Info().Str("username", req.Username).Msg("login attempt")

	marketersCollection := repository.Collection(repository.MarketersCollection)
	var marketer models.Marketer
	err := marketersCollection.FindOne(repository.GetContext(), bson.M{"username": req.Username}).Decode(&marketer)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.ErrorResponse(c, "Nama pengguna tidak ditemukan. Periksa kembali atau daftar akun baru.", http.StatusUnauthorized)
			return
		}
		utils.Logger.Error().Err(err).Msg("marketer lookup failed")
		utils.ErrorResponse(c, "Login gagal karena kesalahan basis data. Silakan coba lagi.", http.StatusInternalServerError)
		return
	}

	if !utils.VerifyPassword(req.Password, marketer.Password) {
		utils.Logger.Info().Str("username", req.Username).Msg("login failed: wrong password")
		utils.ErrorResponse(c, "Nama pengguna atau kata sandi salah.", http.StatusUnauthorized)
		return
	}

	token, err := utils.GenerateToken(marketer)
	if err != nil {
		utils.ErrorResponse(c, "Gagal membuat token login. Silakan coba lagi.", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login berhasil.",
		"data": models.LoginResponse{
			Token: token,
			User: gin.H{
				"_id":      marketer.ID.Hex(),
				"username": marketer.Username,
				"fullName": marketer.FullName,
				"email":    marketer.Email,
				"position": marketer.Position,
				"role":     marketer.Role,
			},
		},
	})
}

// Register creates a marketer account.
func Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "Permintaan tidak valid: "+err.Error(), http.StatusBadRequest)
		return
	}

	marketersCollection := repository.Collection(repository.MarketersCollection)
	ctx := repository.GetContext()

	count, err := marketersCollection.CountDocuments(ctx, bson.M{"username": req.Username})
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if count > 0 {
		utils.ErrorResponse(c, "Nama pengguna sudah terdaftar. Silakan pilih nama lain.", http.StatusConflict)
		return
	}

	now := time.Now().UTC()
	marketer := models.Marketer{
		Username:  req.Username,
		Password:  utils.HashPassword(req.Password),
		FullName:  req.FullName,
		Email:     req.Email,
		Position:  req.Position,
		Role:      models.UserRoleMarketer,
		CreatedAt: now,
		UpdatedAt: now,
	}

	result, err := marketersCollection.InsertOne(ctx, marketer)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	marketer.ID = result.InsertedID.(primitive.ObjectID)

	utils.LogInfo(map[string]interface{}{
		"marketerId": marketer.ID.Hex(),
		"username":   marketer.Username,
	}, "marketer account created")

	utils.SuccessResponse(c, gin.H{"_id": marketer.ID.Hex()}, "Akun berhasil dibuat. Silakan login.", http.StatusCreated)
}
