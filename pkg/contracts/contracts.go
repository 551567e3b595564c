// Package contracts holds recorded response bodies of the external APIs
// ytdigest reads, trimmed to the fields it relies on plus their siblings.
// Client tests replay them to catch parsing drift.
package contracts

// YouTubeVideoContract is a videos.list response for
// part=snippet,statistics,contentDetails.
const YouTubeVideoContract = `{
  "kind": "youtube#videoListResponse",
  "etag": "x1",
  "items": [
    {
      "kind": "youtube#video",
      "etag": "x2",
      "id": "dQw4w9WgXcQ",
      "snippet": {
        "publishedAt": "2009-10-25T06:57:33Z",
        "channelId": "UCuAXFkgsw1L7xaCfnd5JJOw",
        "title": "Rick Astley - Never Gonna Give You Up (Official Music Video)",
        "description": "The official video for “Never Gonna Give You Up” by Rick Astley",
        "channelTitle": "Rick Astley",
        "tags": ["rick astley", "Never Gonna Give You Up", "rickroll"],
        "categoryId": "10",
        "liveBroadcastContent": "none"
      },
      "contentDetails": {
        "duration": "PT3M33S",
        "dimension": "2d",
        "definition": "hd",
        "caption": "true"
      },
      "statistics": {
        "viewCount": "1500000000",
        "likeCount": "17000000",
        "favoriteCount": "0",
        "commentCount": "2300000"
      }
    }
  ],
  "pageInfo": {"totalResults": 1, "resultsPerPage": 1}
}`

// YouTubeVideoNoStatsContract is a videos.list item whose owner hid likes
// and disabled comments, so those counters are omitted.
const YouTubeVideoNoStatsContract = `{
  "kind": "youtube#videoListResponse",
  "items": [
    {
      "id": "hidden01",
      "snippet": {"title": "Quiet video", "description": "", "channelTitle": "Someone"},
      "contentDetails": {"duration": "P1DT2H"},
      "statistics": {"viewCount": "42", "favoriteCount": "0"}
    }
  ],
  "pageInfo": {"totalResults": 1, "resultsPerPage": 1}
}`

// YouTubeEmptyVideoContract is the videos.list response for an unknown id.
const YouTubeEmptyVideoContract = `{
  "kind": "youtube#videoListResponse",
  "items": [],
  "pageInfo": {"totalResults": 0, "resultsPerPage": 0}
}`

// YouTubeCommentThreadsContract is a commentThreads.list response with
// part=snippet and order=relevance.
const YouTubeCommentThreadsContract = `{
  "kind": "youtube#commentThreadListResponse",
  "nextPageToken": "QURTSl9p",
  "pageInfo": {"totalResults": 2, "resultsPerPage": 20},
  "items": [
    {
      "kind": "youtube#commentThread",
      "id": "Ugz1",
      "snippet": {
        "videoId": "dQw4w9WgXcQ",
        "topLevelComment": {
          "kind": "youtube#comment",
          "id": "Ugz1",
          "snippet": {
            "textDisplay": "Still a banger<br><a href=\"https://www.youtube.com/watch?v=dQw4w9WgXcQ&amp;t=43\">0:43</a>",
            "textOriginal": "Still a banger\n0:43",
            "authorDisplayName": "@listener",
            "likeCount": 120
          }
        },
        "canReply": true,
        "totalReplyCount": 3
      }
    },
    {
      "kind": "youtube#commentThread",
      "id": "Ugz2",
      "snippet": {
        "videoId": "dQw4w9WgXcQ",
        "topLevelComment": {
          "kind": "youtube#comment",
          "id": "Ugz2",
          "snippet": {"textDisplay": "Got me again", "textOriginal": "Got me again", "likeCount": 7}
        },
        "totalReplyCount": 0
      }
    }
  ]
}`

// DislikeVotesContract is a Return YouTube Dislike /votes response.
const DislikeVotesContract = `{
  "id": "dQw4w9WgXcQ",
  "dateCreated": "2021-11-10T20:15:49.012345Z",
  "likes": 17000000,
  "rawDislikes": 12000,
  "rawLikes": 30000,
  "dislikes": 480000,
  "rating": 4.89,
  "viewCount": 1500000000,
  "deleted": false
}`
