package controller

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/model"
	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/utilities"
)

const (
	resumeObjectPrefix = "resumes"
	logoObjectPrefix   = "logos"
)

// readUpload pulls the named multipart file out of the request and enforces
// the allowed extensions. On failure the error response is already written
// and the returned bytes are nil.
func readUpload(c *gin.Context, field string, allowed map[string]bool) ([]byte, string) {
	rawFile, err := c.FormFile(field)
	var maxBytesError *http.MaxBytesError
	if errors.As(err, &maxBytesError) {
		c.JSON(http.StatusRequestEntityTooLarge, utilities.ErrorResponse{
			Error: err.Error(),
		})
		return nil, ""
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve file: %s", err.Error()),
		})
		return nil, ""
	}

	extension := strings.ToLower(filepath.Ext(rawFile.Filename))
	if !allowed[extension] {
		c.JSON(http.StatusUnsupportedMediaType, utilities.ErrorResponse{
			Error: fmt.Sprintf("Unsupported file extension: %s", extension),
		})
		return nil, ""
	}

	f, err := rawFile.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Cannot open file"})
		return nil, ""
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("failed to close uploaded file: %v", err)
		}
	}()

	fileBytes, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Cannot read file"})
		return nil, ""
	}

	return fileBytes, extension
}

// persistFileData stores fileBytes either in the bucket or inline in the
// file row when no bucket is configured.
func (ct *Controller) persistFileData(file *model.File, fileBytes []byte, extension, prefix string) error {
	file.Extension = extension
	if ct.Storage == nil {
		file.Content = fileBytes
		file.ObjectName = ""
		file.URL = ""
		return nil
	}

	objectName := fmt.Sprintf("%s/%s%s", prefix, uuid.NewString(), extension)
	if err := ct.Storage.UploadFile(objectName, bytes.NewReader(fileBytes)); err != nil {
		return err
	}

	file.ObjectName = objectName
	file.URL = ct.Storage.ObjectURL(objectName)
	file.Content = nil
	return nil
}

// UploadResume handles uploading a resume file for a talent and updating the
// profile's resume URL.
// @Summary Upload resume file for talent
// @Description Only file that smaller than 10 MB with .pdf extension is permitted
// @Tags Talent
// @Accept mpfd
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param resume formData file true "Upload your resume file"
// @Success 200 {object} model.TalentProfile "Successfully upload resume"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 413 {object} utilities.ErrorResponse "File size is larger than 10 MB"
// @Failure 415 {object} utilities.ErrorResponse "File extension is not allowed"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /talent/profile/resume [post]
func (ct *Controller) UploadResume(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var talent model.TalentProfile
	if err := ct.DB.Preload("User").Where("user_id = ?", user.ID.String()).First(&talent).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve user information from database: %s", err.Error()),
		})
		return
	}

	fileBytes, extension := readUpload(c, "resume", map[string]bool{".pdf": true})
	if fileBytes == nil {
		return
	}

	var file model.File
	if err := ct.persistFileData(&file, fileBytes, extension, resumeObjectPrefix); err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to store resume: %s", err.Error()),
		})
		return
	}

	if err := ct.DB.Create(&file).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to save file record: %s", err.Error()),
		})
		return
	}

	talent.ResumeURL = fileURL(&file)
	if err := ct.DB.Model(&talent).Update("resume_url", talent.ResumeURL).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update user information: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, talent)
}

// UploadLogo handles a company's logo upload and updates the profile's
// avatar URL.
// @Summary Upload logo file for company
// @Description Only file that smaller than 10 MB with .jpg, .jpeg, or .png extension is permitted
// @Tags Company
// @Accept mpfd
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param logo formData file true "Upload your logo file"
// @Success 200 {object} model.CompanyProfile "Successfully upload logo"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 413 {object} utilities.ErrorResponse "File size is larger than 10 MB"
// @Failure 415 {object} utilities.ErrorResponse "File extension is not allowed"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /company/profile/logo [post]
func (ct *Controller) UploadLogo(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var company model.CompanyProfile
	if err := ct.DB.Preload("User").Where("user_id = ?", user.ID.String()).First(&company).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve user information from database: %s", err.Error()),
		})
		return
	}

	fileBytes, extension := readUpload(c, "logo", map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
	})
	if fileBytes == nil {
		return
	}

	var file model.File
	if err := ct.persistFileData(&file, fileBytes, extension, logoObjectPrefix); err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to store logo: %s", err.Error()),
		})
		return
	}

	if err := ct.DB.Create(&file).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to save file record: %s", err.Error()),
		})
		return
	}

	company.AvatarURL = fileURL(&file)
	if err := ct.DB.Model(&company).Update("avatar_url", company.AvatarURL).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update user information: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, company)
}

// fileURL is the address handed back to clients. Bucket-backed files use the
// public object URL, inline files are served through the download endpoint.
func fileURL(file *model.File) string {
	if file.URL != "" {
		return file.URL
	}
	return fmt.Sprintf("/api/v1/file/%d", file.ID)
}

// GetFile retrieves a file and sends it as a downloadable attachment.
// @Summary Retrieve downloadable attachment
// @Tags File
// @Produce octet-stream
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "ID of wanted file"
// @Success 200 {string} binary "Successfully retrieve file"
// @Failure 404 {object} utilities.ErrorResponse "Given file id not found"
// @Failure 500 {object} utilities.ErrorResponse "Fail to send file content"
// @Router /file/{id} [get]
func (ct *Controller) GetFile(c *gin.Context) {
	var file model.File
	id := c.Param("id")

	if err := ct.DB.First(&file, id).Error; err != nil {
		c.String(http.StatusNotFound, "File not found")
		return
	}

	content := file.Content
	if file.ObjectName != "" {
		if ct.Storage == nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: "Cloud storage is disabled while the requested file is stored remotely",
			})
			return
		}
		data, err := ct.Storage.DownloadFile(file.ObjectName)
		if err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to download file from storage: %s", err.Error()),
			})
			return
		}
		content = data
	}

	c.Writer.Header().Set("Content-Disposition", "attachment; filename="+fmt.Sprint(file.ID)+file.Extension)
	c.Writer.Header().Set("Content-Type", "application/octet-stream")
	c.Writer.Header().Set("Content-Length", fmt.Sprint(len(content)))

	if _, err := c.Writer.Write(content); err != nil {
		if !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: "Failed to send file content",
			})
		} else {
			c.Abort()
		}
	}
}
