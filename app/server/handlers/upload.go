package handlers

import (
	"bulletin-board/app/server/constants"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// saveUpload 保存请求里的附件，返回相对存储路径。
// 请求不是 multipart 或者没有带 upload 字段时返回 (nil, nil) 。
func (a *App) saveUpload(c echo.Context) (*string, error) {
	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(contentType, echo.MIMEMultipartForm) {
		return nil, nil
	}

	fileHeader, err := c.FormFile("upload")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, fmt.Errorf("read upload: %w", err)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	// 按日期分目录，文件名换成 uuid ，避免路径里混入调用方给的名字
	relPath := filepath.Join(
		constants.UploadPathPrefix,
		time.Now().Format(constants.UploadPathDateLayout),
		uuid.NewString()+filepath.Ext(fileHeader.Filename),
	)
	fullPath := filepath.Join(a.cfg.System.UploadDir, relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		return nil, fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return nil, fmt.Errorf("write upload file: %w", err)
	}

	return &relPath, nil
}
