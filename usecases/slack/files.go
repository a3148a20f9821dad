package slack

import (
	"context"
	"fmt"
	"log"

	"filebridge/clients"
	"filebridge/guards"
	"filebridge/models"
	"filebridge/processors"
)

// ProcessFileSharedEvent runs the file pipeline end to end for one
// file_shared event: fetch metadata, evaluate guards, download, resolve
// the thread context, invoke the matching processor and route its output
// back to the conversation. Most early exits are deliberately silent so
// benign conditions (deleted uploads, unsupported types) don't spam the
// channel.
func (s *SlackUseCase) ProcessFileSharedEvent(ctx context.Context, event models.SlackFileSharedEvent) error {
	log.Printf("📋 Starting to process file_shared event for file %s in channel %s", event.FileID, event.ChannelID)

	if s.pipelineTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.pipelineTimeout)
		defer cancel()
	}

	// Fetch metadata. A failure here is terminal and silent: the file may
	// already be gone, and surfacing that in the channel is just noise.
	file, err := s.slackClient.GetFileInfo(ctx, event.FileID)
	if err != nil {
		log.Printf("❌ Failed to get file info for %s: %v", event.FileID, err)
		return fmt.Errorf("failed to get file info: %w", err)
	}

	// Guard evaluation
	skipResult := s.guardChain.ShouldSkip(guards.Context{
		FileUserID: file.User,
		BotUserID:  s.botUserID,
		Filename:   file.Name,
		Mimetype:   file.Mimetype,
		FileSize:   file.Size,
	})
	if skipResult.Skip {
		log.Printf("⏭️ Skipping file %s: %s", file.Name, skipResult.Reason)
		return nil
	}

	// Without a private URL there's nothing to download
	if file.URLPrivateDownload == "" {
		log.Printf("⏭️ File %s has no private download URL, skipping", file.Name)
		return nil
	}

	content, err := s.slackClient.DownloadFile(ctx, file.URLPrivateDownload)
	if err != nil {
		log.Printf("❌ Failed to download file %s: %v", file.Name, err)
		return fmt.Errorf("failed to download file: %w", err)
	}

	threadTS := resolveThreadTS(file, event.ChannelID)

	output, err := s.registry.Process(ctx, processors.Input{
		Filename:  file.Name,
		Mimetype:  file.Mimetype,
		Extension: processors.ExtractExtension(file.Name),
		Content:   content,
		UserID:    event.UserID,
		ChannelID: event.ChannelID,
		ThreadTS:  threadTS,
	})
	if err != nil {
		log.Printf("❌ Processor failed on file %s: %v", file.Name, err)
		return fmt.Errorf("processor failed: %w", err)
	}
	if output == nil {
		// No processor claims this file type; not an error
		return nil
	}

	if err := s.routeOutput(ctx, event.ChannelID, threadTS, output); err != nil {
		log.Printf("❌ Failed to send response for file %s: %v", file.Name, err)
		return fmt.Errorf("failed to send response: %w", err)
	}

	// Record the processed-document fact for the external store
	document, err := s.documentsService.CreateProcessedDocument(ctx, file.Name, event.ChannelID, file.ID)
	if err != nil {
		log.Printf("❌ Failed to record processed document for %s: %v", file.Name, err)
		return fmt.Errorf("failed to record processed document: %w", err)
	}

	log.Printf("📋 Completed successfully - processed file %s (document %s)", file.Name, document.ID)
	return nil
}

// resolveThreadTS recovers the thread context for a file from its share
// map: public shares are preferred over private ones, and the first
// recorded share's timestamp wins. An empty result means any reply goes
// out as a new top-level message.
func resolveThreadTS(file *clients.SlackFile, channelID string) string {
	if shares := file.Shares.Public[channelID]; len(shares) > 0 {
		return shares[0].TS
	}
	if shares := file.Shares.Private[channelID]; len(shares) > 0 {
		return shares[0].TS
	}
	return ""
}

// routeOutput sends a processor's output back to the conversation: file
// outputs become uploads with the text as caption, text-only outputs
// become messages. An output with neither is legal and sends nothing.
func (s *SlackUseCase) routeOutput(ctx context.Context, channelID, threadTS string, output *processors.Output) error {
	replyThreadTS := ""
	if output.ReplyInThread && threadTS != "" {
		replyThreadTS = threadTS
	}

	if output.File != nil {
		return s.slackClient.UploadFile(ctx, clients.SlackFileUploadParameters{
			ChannelID:       channelID,
			Content:         output.File.Content,
			Filename:        output.File.Filename,
			Title:           output.File.Title,
			InitialComment:  output.Text,
			ThreadTimestamp: replyThreadTS,
		})
	}

	if output.Text != "" {
		options := []clients.SlackMessageOption{
			clients.SlackMessageOptionText(output.Text),
		}
		if replyThreadTS != "" {
			options = append(options, clients.SlackMessageOptionThreadTS(replyThreadTS))
		}
		if len(output.Blocks) > 0 {
			options = append(options, clients.SlackMessageOptionBlocks(output.Blocks))
		}

		_, err := s.slackClient.PostMessage(ctx, channelID, options...)
		return err
	}

	return nil
}
