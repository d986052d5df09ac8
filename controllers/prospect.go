package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/emidigital/emi-crm/config"
	"github.com/emidigital/emi-crm/models"
	"github.com/emidigital/emi-crm/repository"
	"github.com/emidigital/emi-crm/service"
	"github.com/emidigital/emi-crm/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// importSource is swapped out in tests.
var importSource service.ImportSource = service.NewHTTPImportSource(config.LoadConfig())

// findOwnedProspect loads a prospect and enforces the ownership rule.
func findOwnedProspect(c *gin.Context, id string) (*models.Prospect, *utils.LoginUser, bool) {
	user, err := utils.GetUser(c)
	if err != nil {
		utils.HandleError(c, utils.CreateUnauthorizedError())
		return nil, nil, false
	}

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		utils.ErrorResponse(c, "Format ID prospek tidak valid.", http.StatusBadRequest)
		return nil, nil, false
	}

	var prospect models.Prospect
	err = repository.Collection(repository.ProspectsCollection).
		FindOne(repository.GetContext(), bson.M{"_id": objID}).
		Decode(&prospect)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.ErrorResponse(c, "Prospek tidak ditemukan.", http.StatusNotFound)
			return nil, nil, false
		}
		utils.HandleError(c, err)
		return nil, nil, false
	}

	if !utils.CanAccessRecord(user.ID, models.UserRole(user.Role), prospect.OwnerID) {
		utils.HandleError(c, utils.CreateForbiddenError())
		return nil, nil, false
	}

	return &prospect, user, true
}

// ListProspects returns the caller's prospects, optionally filtered.
func ListProspects(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		utils.ErrorResponse(c, err.Error(), http.StatusUnauthorized)
		return
	}

	query := bson.M{}
	if !utils.IsAdmin(models.UserRole(user.Role)) {
		query["ownerId"] = user.ID
	}
	if status := c.Query("status"); status != "" {
		query["status"] = status
	}
	if industry := c.Query("industry"); industry != "" {
		query["industry"] = bson.M{"$regex": industry, "$options": "i"}
	}
	if keyword := c.Query("keyword"); keyword != "" {
		query["$or"] = []bson.M{
			{"companyName": bson.M{"$regex": keyword, "$options": "i"}},
			{"keywords": bson.M{"$regex": keyword, "$options": "i"}},
			{"contactName": bson.M{"$regex": keyword, "$options": "i"}},
		}
	}

	page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	ctx := repository.GetContext()
	total, err := repository.Collection(repository.ProspectsCollection).CountDocuments(ctx, query)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	opts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)
	cursor, err := repository.Collection(repository.ProspectsCollection).Find(ctx, query, opts)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer cursor.Close(ctx)

	prospects := make([]models.Prospect, 0)
	if err := cursor.All(ctx, &prospects); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.PaginatedResponse(c, prospects, total, page, limit)
}

// GetProspect returns one prospect.
func GetProspect(c *gin.Context) {
	prospect, _, ok := findOwnedProspect(c, c.Param("id"))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": prospect})
}

// CreateProspect records a manually researched prospect.
func CreateProspect(c *gin.Context) {
	var input models.ProspectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.ErrorResponse(c, "Permintaan tidak valid: "+err.Error(), http.StatusBadRequest)
		return
	}

	user, err := utils.GetUser(c)
	if err != nil {
		utils.ErrorResponse(c, err.Error(), http.StatusUnauthorized)
		return
	}

	status := input.Status
	if status == "" {
		status = models.StatusNew
	}
	if !status.IsValid() {
		utils.ErrorResponse(c, "Status tidak dikenal: "+string(input.Status), http.StatusBadRequest)
		return
	}

	now := time.Now().UTC()
	prospect := prospectFromInput(input, status, user)
	prospect.Source = models.ProspectSourceManual
	prospect.CreatedAt = now
	prospect.UpdatedAt = now

	result, err := repository.Collection(repository.ProspectsCollection).
		InsertOne(repository.GetContext(), prospect)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	prospect.ID = result.InsertedID.(primitive.ObjectID)

	utils.SuccessResponse(c, prospect, "Prospek berhasil disimpan.", http.StatusCreated)
}

// UpdateProspect edits a prospect in place.
func UpdateProspect(c *gin.Context) {
	prospect, _, ok := findOwnedProspect(c, c.Param("id"))
	if !ok {
		return
	}

	var input models.ProspectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.ErrorResponse(c, "Permintaan tidak valid: "+err.Error(), http.StatusBadRequest)
		return
	}

	status := input.Status
	if status == "" {
		status = prospect.Status
	}
	if !status.IsValid() {
		utils.ErrorResponse(c, "Status tidak dikenal: "+string(input.Status), http.StatusBadRequest)
		return
	}

	update := bson.M{"$set": bson.M{
		"companyName":     input.CompanyName,
		"website":         input.Website,
		"industry":        input.Industry,
		"foundedYear":     input.FoundedYear,
		"companySize":     input.CompanySize,
		"revenue":         input.Revenue,
		"contactName":     input.ContactName,
		"contactTitle":    input.ContactTitle,
		"contactEmail":    input.ContactEmail,
		"contactPhone":    input.ContactPhone,
		"location":        input.Location,
		"keywords":        input.Keywords,
		"technologies":    input.Technologies,
		"notes":           input.Notes,
		"nextStep":        input.NextStep,
		"nextStepDate":    input.NextStepDate,
		"status":          status,
		"isDecisionMaker": input.IsDecisionMaker,
		"emailValid":      input.EmailValid,
		"updatedAt":       time.Now().UTC(),
	}}

	_, err := repository.Collection(repository.ProspectsCollection).
		UpdateOne(repository.GetContext(), bson.M{"_id": prospect.ID}, update)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, nil, "Prospek berhasil diperbarui.")
}

// DeleteProspect removes a prospect permanently.
func DeleteProspect(c *gin.Context) {
	prospect, _, ok := findOwnedProspect(c, c.Param("id"))
	if !ok {
		return
	}

	result, err := repository.Collection(repository.ProspectsCollection).
		DeleteOne(repository.GetContext(), bson.M{"_id": prospect.ID})
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if result.DeletedCount == 0 {
		utils.ErrorResponse(c, "Prospek tidak ditemukan atau sudah dihapus.", http.StatusNotFound)
		return
	}

	utils.LogInfo(map[string]interface{}{
		"prospectId": prospect.ID.Hex(),
		"company":    prospect.CompanyName,
	}, "prospect deleted")

	utils.SuccessResponse(c, nil, "Prospek berhasil dihapus.")
}

// SaveProspectTemplate stores a generated email template on the prospect.
func SaveProspectTemplate(c *gin.Context) {
	prospect, _, ok := findOwnedProspect(c, c.Param("id"))
	if !ok {
		return
	}

	var body struct {
		EmailTemplate string `json:"emailTemplate" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.ErrorResponse(c, "Template email wajib diisi.", http.StatusBadRequest)
		return
	}

	_, err := repository.Collection(repository.ProspectsCollection).UpdateOne(
		repository.GetContext(),
		bson.M{"_id": prospect.ID},
		bson.M{"$set": bson.M{"emailTemplate": body.EmailTemplate, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, nil, "Template email berhasil disimpan pada prospek.")
}

// ImportProspects queries the import source and persists the results as new
// prospects owned by the caller.
func ImportProspects(c *gin.Context) {
	var req models.ImportProspectsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "Kata kunci pencarian wajib diisi.", http.StatusBadRequest)
		return
	}

	user, err := utils.GetUser(c)
	if err != nil {
		utils.ErrorResponse(c, err.Error(), http.StatusUnauthorized)
		return
	}

	results, err := importSource.Search(c.Request.Context(), req.Query)
	if err != nil {
		utils.LogError(err, map[string]interface{}{"query": req.Query}, "prospect import failed")
		utils.ErrorResponse(c, "Impor prospek gagal: "+err.Error(), http.StatusBadGateway)
		return
	}

	if len(results) == 0 {
		utils.SuccessResponse(c, gin.H{"imported": 0}, "Tidak ada prospek yang cocok dengan kata kunci tersebut.")
		return
	}

	batchID := uuid.NewString()
	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(results))
	for _, input := range results {
		status := input.Status
		if !status.IsValid() {
			status = models.StatusNew
		}
		prospect := prospectFromInput(input, status, user)
		prospect.Source = models.ProspectSourceImported
		prospect.ImportBatchID = batchID
		prospect.CreatedAt = now
		prospect.UpdatedAt = now
		docs = append(docs, prospect)
	}

	if _, err := repository.Collection(repository.ProspectsCollection).
		InsertMany(repository.GetContext(), docs); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.LogInfo(map[string]interface{}{
		"query":   req.Query,
		"batchId": batchID,
		"count":   len(docs),
	}, "prospects imported")

	utils.SuccessResponse(c, gin.H{
		"imported": len(docs),
		"batchId":  batchID,
	}, "Impor prospek selesai.", http.StatusCreated)
}

// prospectFromInput maps the shared input shape onto a prospect owned by
// the caller.
func prospectFromInput(input models.ProspectInput, status models.Status, user *utils.LoginUser) models.Prospect {
	return models.Prospect{
		CompanyName:     input.CompanyName,
		Website:         input.Website,
		Industry:        input.Industry,
		FoundedYear:     input.FoundedYear,
		CompanySize:     input.CompanySize,
		Revenue:         input.Revenue,
		ContactName:     input.ContactName,
		ContactTitle:    input.ContactTitle,
		ContactEmail:    input.ContactEmail,
		ContactPhone:    input.ContactPhone,
		Location:        input.Location,
		Keywords:        input.Keywords,
		Technologies:    input.Technologies,
		Notes:           input.Notes,
		NextStep:        input.NextStep,
		NextStepDate:    input.NextStepDate,
		Status:          status,
		IsDecisionMaker: input.IsDecisionMaker,
		EmailValid:      input.EmailValid,
		OwnerID:         user.ID,
		OwnerName:       user.Username,
	}
}
