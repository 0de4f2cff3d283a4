// Package chatdock provides an embedded Go client for the chatdock chat
// store backed by Redis with the JSON and Search modules.
//
// The client wires the storage and service layers directly, without the HTTP
// surface:
//
//	client, _ := chatdock.New(ctx, chatdock.WithRedis("localhost:6379", ""))
//	defer client.Close()
//
//	_ = client.Search().EnsureIndex(ctx)
//	user, _ := client.Users().Create(ctx, "alice", "Alice")
//	chat, _ := client.Chats().Create(ctx, user.UserID, "Plans")
//	_, _ = client.Chats().AppendMessage(ctx, chat.ChatID, chatdock.Message{Content: "hi"})
//	records, _ := client.Search().Query(ctx, user.UserID, "hi")
package chatdock
