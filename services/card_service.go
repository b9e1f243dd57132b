package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"log"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	config "github.com/mwangik4/heartlink/configs"
	"github.com/mwangik4/heartlink/models"
)

// GenerateShareCard renders the user's shareable profile card (name, level,
// badges) to a PNG via headless Chrome and uploads it to Cloudinary,
// returning the hosted URL.
func (s *GamificationService) GenerateShareCard(userID uuid.UUID) (string, error) {
	var user models.User
	if err := s.db.Preload("Profile").First(&user, "id = ?", userID).Error; err != nil {
		return "", err
	}

	progress, err := s.getOrCreateProgress(s.db, userID)
	if err != nil {
		return "", err
	}

	badgeNames := make([]string, 0, len(progress.Badges))
	for _, slug := range progress.Badges {
		if cfg, ok := s.badges[slug]; ok {
			badgeNames = append(badgeNames, cfg.Icon+" "+cfg.Name)
		}
	}

	htmlData, err := renderCardHTML(user.FullName, progress.Level, progress.XP, badgeNames)
	if err != nil {
		return "", fmt.Errorf("failed to render share card HTML: %v", err)
	}

	pngBytes, err := renderPNGFromHTML(htmlData)
	if err != nil {
		return "", fmt.Errorf("failed to render share card image: %v", err)
	}

	url, err := uploadCardToCloudinary(pngBytes, userID.String())
	if err != nil {
		return "", fmt.Errorf("failed to upload share card: %v", err)
	}

	log.Printf("✅ Generated share card for user %s.", userID)
	return url, nil
}

func renderCardHTML(fullName string, level, xp int, badges []string) (string, error) {
	tmpl, err := template.ParseFiles("templates/share_card.html")
	if err != nil {
		return "", err
	}

	badgesJSON, _ := json.Marshal(badges)
	data := struct {
		FullName string
		Level    int
		XP       int
		Badges   []string
		BadgesJS template.JS
	}{
		FullName: fullName,
		Level:    level,
		XP:       xp,
		Badges:   badges,
		BadgesJS: template.JS(badgesJSON),
	}

	var rendered bytes.Buffer
	if err := tmpl.Execute(&rendered, data); err != nil {
		return "", err
	}
	return rendered.String(), nil
}

func renderPNGFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var buf []byte
	err := chromedp.Run(ctx,
		chromedp.EmulateViewport(600, 800),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.FullScreenshot(&buf, 90),
	)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

func uploadCardToCloudinary(fileBytes []byte, userID string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID: fmt.Sprintf("cards/%s_%s", userID, uuid.New().String()),
		Folder:   "heartlink_share_cards",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}
