package constants

const DefaultPageSize = 10 // 未配置 PAGE_SIZE 时的默认分页大小
