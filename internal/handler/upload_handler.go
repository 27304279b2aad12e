package handler

import (
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

// thumbWidth 是后台列表缩略图的目标宽度
const thumbWidth = 480

// UploadImage 处理图片上传请求，保存原图并生成缩略图
func (a *API) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, "未找到上传的图片")
		return
	}

	// 检查文件类型
	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		respondError(c, http.StatusBadRequest, "只允许上传图片文件")
		return
	}

	if err := os.MkdirAll(a.uploadDir, 0o755); err != nil {
		respondError(c, http.StatusInternalServerError, "创建上传目录失败")
		return
	}

	// 生成唯一文件名
	ext := filepath.Ext(file.Filename)
	newFilename := fmt.Sprintf("%s-%s%s", time.Now().Format("20060102"), uuid.New().String(), ext)
	filePath := filepath.Join(a.uploadDir, newFilename)

	if err := c.SaveUploadedFile(file, filePath); err != nil {
		respondError(c, http.StatusInternalServerError, "保存文件失败")
		return
	}

	fileURL := fmt.Sprintf("%s/%s", strings.TrimSuffix(a.uploadURL, "/"), newFilename)

	// 缩略图生成失败不阻塞上传，后台列表会回退到原图
	thumbURL := fileURL
	if thumbName, err := a.writeThumbnail(filePath, newFilename); err == nil {
		thumbURL = fmt.Sprintf("%s/%s", strings.TrimSuffix(a.uploadURL, "/"), thumbName)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "上传成功",
		"url":      fileURL,
		"thumbUrl": thumbURL,
	})
}

// writeThumbnail 按固定宽度等比缩放，输出 JPEG 缩略图
func (a *API) writeThumbnail(srcPath, srcName string) (string, error) {
	src, err := os.Open(srcPath)
	if err != nil {
		return "", err
	}
	defer src.Close()

	decoded, _, err := image.Decode(src)
	if err != nil {
		return "", err
	}

	bounds := decoded.Bounds()
	if bounds.Dx() <= thumbWidth {
		return srcName, nil
	}

	height := bounds.Dy() * thumbWidth / bounds.Dx()
	scaled := image.NewRGBA(image.Rect(0, 0, thumbWidth, height))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), decoded, bounds, draw.Over, nil)

	thumbName := strings.TrimSuffix(srcName, filepath.Ext(srcName)) + "_thumb.jpg"
	out, err := os.Create(filepath.Join(a.uploadDir, thumbName))
	if err != nil {
		return "", err
	}
	defer out.Close()

	if err := jpeg.Encode(out, scaled, &jpeg.Options{Quality: 85}); err != nil {
		return "", err
	}
	return thumbName, nil
}
